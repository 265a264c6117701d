package main

import (
	"github.com/ErVaaL/argos-resource-service/internal/runtime"
)

func main() {
	svc := runtime.New()
	svc.Run()
}
