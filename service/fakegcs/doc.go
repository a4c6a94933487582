// Package fakegcs is the fake-gcs-server service preset, registered as "fakegcs".
package fakegcs
