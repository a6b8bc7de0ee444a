package main

import (
	"flag"
	"os"

	"github.com/RogueScr1be/fast-food-sub005/cmd"

	"github.com/RogueScr1be/fast-food-sub005/models"
)

func main() {
	shouldRunMigrations := flag.Bool("migrations", false, "Run database migrations")
	shouldRunServer := flag.Bool("server", false, "Run the API server")
	shouldRunWorker := flag.Bool("worker", false, "Run the task queue worker")
	shouldRunAuthCheck := flag.Bool("auth-check", false, "Check the live API's authentication contract")
	shouldRunVerifySchema := flag.Bool("verify-schema", false, "Check that the database schema is complete")
	shouldRunMetricsAlert := flag.Bool("metrics-alert", false, "Alert when too many sessions were abandoned today")
	shouldRunLogDeployment := flag.Bool("log-deployment", false, "Record a deployment")
	shouldRunLogRollback := flag.Bool("log-rollback", false, "Record a rollback")
	setFlag := flag.String("set-flag", "", "Set a runtime flag (use with -enabled)")
	setFlagEnabled := flag.Bool("enabled", false, "Value for -set-flag")
	flag.Parse()

	var err error
	switch {
	case *shouldRunMigrations:
		err = cmd.RunMigrations()
	case *shouldRunServer:
		err = cmd.RunServer()
	case *shouldRunWorker:
		err = cmd.RunTaskQueue()
	case *shouldRunAuthCheck:
		err = cmd.RunAuthCheck()
	case *shouldRunVerifySchema:
		err = cmd.RunVerifySchema()
	case *shouldRunMetricsAlert:
		err = cmd.RunMetricsAlert()
	case *shouldRunLogDeployment:
		err = cmd.RunLogDeployment(models.DeploymentActionDeploy)
	case *shouldRunLogRollback:
		err = cmd.RunLogDeployment(models.DeploymentActionRollback)
	case *setFlag != "":
		err = cmd.RunSetRuntimeFlag(*setFlag, *setFlagEnabled)
	default:
		flag.Usage()
		os.Exit(2)
	}
	if err != nil {
		os.Exit(1)
	}
}
