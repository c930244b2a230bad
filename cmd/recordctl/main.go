package main

import (
	"github.com/decodahealth/patient-record/cmd/recordctl/command"
)

func main() {
	command.Execute()
}
