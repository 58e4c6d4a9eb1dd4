// Package provisioning exposes schema reconciliation over HTTP.
//
//	GET  /provision/plan   dry run, returns the plan
//	POST /provision        applies the desired schema, returns the report
package provisioning
