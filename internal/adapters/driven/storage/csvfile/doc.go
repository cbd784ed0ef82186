// Package csvfile provides a CSV-file implementation of driven.FeedbackLog.
//
// The file has the header "method,query,rating" and is rewritten in full
// on every append: records are written to a temporary file in the same
// directory which then replaces the log, so an interrupted write loses at
// most the newest record.
package csvfile
