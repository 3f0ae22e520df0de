package workflows

import "go.temporal.io/sdk/worker"

func Register(w worker.Worker) {
	w.RegisterWorkflow(ProjectSetupWorkflow)
	w.RegisterWorkflow(SourceDiscoveryWorkflow)
	w.RegisterWorkflow(DiscoveryCadenceWorkflow)
	w.RegisterWorkflow(ReadingSessionWorkflow)
	w.RegisterWorkflow(PublicationScanWorkflow)
}
