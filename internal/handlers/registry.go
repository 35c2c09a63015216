package handlers

// serviceName labels this service in metrics.
const serviceName = "onboarding"

// AppHandlers bundles the constructed handlers for route registration.
type AppHandlers struct {
	SessionHandler *SessionHandler
	UploadHandler  *UploadHandler
	AdvertHandler  *AdvertHandler
	FileHandler    *FileHandler
}
