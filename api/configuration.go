package api

import "time"

type Configuration struct {
	Env            string
	AppName        string
	AppVersion     string
	Port           string
	MobileAppUrl   string
	DefaultTimeout time.Duration
}
