// Package all imports all service presets.
package all

import (
	_ "github.com/c2fo/fixture/service/azurite"    // register azurite service
	_ "github.com/c2fo/fixture/service/fakegcs"    // register fakegcs service
	_ "github.com/c2fo/fixture/service/ftp"        // register ftp service
	_ "github.com/c2fo/fixture/service/localstack" // register localstack service
	_ "github.com/c2fo/fixture/service/minio"      // register minio service
	_ "github.com/c2fo/fixture/service/sftp"       // register sftp service
)
