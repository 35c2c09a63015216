package services

// ServiceContainer bundles the constructed services for handler wiring.
type ServiceContainer struct {
	SessionService  SessionService
	UploadService   UploadService
	NotifierService NotifierService
}
