package events

// S3-style bucket notification. Both native bucket events and the
// synthetic ones published on upload confirmation arrive in this shape;
// object keys come URL-encoded.
type ObjectCreatedEvent struct {
	Records []EventRecord `json:"Records"`
}

type EventRecord struct {
	EventName string   `json:"eventName"`
	S3        S3Entity `json:"s3"`
}

type S3Entity struct {
	Bucket BucketEntity `json:"bucket"`
	Object ObjectEntity `json:"object"`
}

type BucketEntity struct {
	Name string `json:"name"`
}

type ObjectEntity struct {
	Key string `json:"key"`
}
