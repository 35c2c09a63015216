// @title           Applicant Document Upload API
// @version         1.0
// @description     Token-gated document collection for job applicants.
// @host            localhost:4000
// @BasePath        /

package main

import "onboarding_backend/internal/app"

func main() {
	app.Run()
}
