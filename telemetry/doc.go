// Package telemetry implements the dashboard's fixed-interval
// fetch-and-summarize loop over the power readings endpoint.
//
// The poller is an independent collaborator of the session core: it shares
// no state with the Manager, holds no credentials, and simply retries on
// the next tick after a failed fetch.
package telemetry
