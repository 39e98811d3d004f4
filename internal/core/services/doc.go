// Package services implements the use cases behind the driving ports:
// ingesting proposals, drafting grounded answers, managing reusable
// blocks, and recording feedback. Services orchestrate the driven ports
// and hold no state of their own between requests.
package services
