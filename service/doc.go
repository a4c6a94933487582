/*
Package service provides a means of allowing service presets to self-register on load via an init() call to
service.Register("some name", fixture.Service)

In this way, a caller can load only the presets it needs and look them up by name:

	package mytest

	import (
		"github.com/c2fo/fixture/service"
		_ "github.com/c2fo/fixture/service/minio"
	)

	func TestBuckets(t *testing.T) {
		svc, err := service.Lookup("minio")
		...
	}

Import github.com/c2fo/fixture/service/all to register every preset.

Every preset is configured with the options in this package (WithImage, WithReadyTimeout, WithCredentials, ...)
applied to a Config.
*/
package service
