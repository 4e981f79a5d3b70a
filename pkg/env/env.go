package env

import "os"

// Name is the deployment environment the process runs in.
type Name string

const (
	Dev   Name = "dev"
	Test  Name = "test"
	Stage Name = "stage"
	Prod  Name = "prod"
)

// Current reads GREENBASKET_ENV, defaulting to dev.
func Current() Name {
	switch Name(os.Getenv("GREENBASKET_ENV")) {
	case Test:
		return Test
	case Stage:
		return Stage
	case Prod:
		return Prod
	default:
		return Dev
	}
}

func (n Name) IsDev() bool  { return n == Dev }
func (n Name) IsProd() bool { return n == Prod }
