// Package api implements the HTTP handlers of the CareerGenie API:
// authentication, career profiles, interview practice, recommendations,
// resume analysis, and the coaching chat. Handlers translate between HTTP
// and the service layer; business rules live in the services.
package api
