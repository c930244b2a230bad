package main

import (
	"github.com/decodahealth/patient-record/api"
)

func main() {
	api.MainLoop()
}
