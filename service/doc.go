// Package service is the ONLY write entry point into the system.
//
// All coordination between the matching core, the trade journal, and
// the quote feed happens here. The core stays synchronous and
// deterministic; everything downstream of the emitted trades is this
// package's problem.
package service
