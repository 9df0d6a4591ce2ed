package services

// ServiceContainer holds instances of all the application services.
// This is the main entry point for accessing service functionality and is
// what gets passed to the handlers.
type ServiceContainer struct {
	GoogleAuth  GoogleAuthSvcFacade
	Session     SessionSvcFacade
	Token       TokenSvcFacade
	Spreadsheet SpreadsheetSvcFacade
	Publish     PublishSvcFacade
	Feed        FeedSvcFacade
}
