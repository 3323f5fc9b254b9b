package services

// Services defined in this package:
// - GraduateService: registration, search and security answer verification
//   of graduate destination records

// Services holds all the service instances
type Services struct {
	GraduateService GraduateService
}
