// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package main

import (
	"os"

	"github.com/MKhiriev/bijukaru-sync/internal/logger"
	"github.com/MKhiriev/bijukaru-sync/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	buildInfo := models.NewAppBuildInfo(buildVersion, buildDate, buildCommit)

	if err := newRootCmd(buildInfo, logger.NewClientLogger).Execute(); err != nil {
		os.Exit(1)
	}
}
