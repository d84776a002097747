package services

// ServiceContainer holds all service facades for injection into handlers.
type ServiceContainer struct {
	Member         MemberSvcFacade
	History        HistorySvcFacade
	Reconciliation ReconciliationSvcFacade
	Recorder       RecorderSvcFacade
	Rotation       RotationSvcFacade
	Pool           PoolSvcFacade
	Auth           AuthSvcFacade
	Token          TokenSvcFacade
	Reporting      ReportingSvcFacade
}
