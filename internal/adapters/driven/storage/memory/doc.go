// Package memory provides in-memory FeedbackLog and ConfigStore
// implementations for tests. Nothing here touches the disk, and the
// application binary does not import it.
package memory
