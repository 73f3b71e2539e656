package submission

import "time"

// Submission is the persisted record of one piece of content that was sent to
// the remote spam classifier: the original payload, the verdict, and the
// signature the classifier assigned to it.
type Submission struct {
	ID        string            `json:"id" bson:"id"`
	Data      map[string]string `json:"data" bson:"data"`
	Allow     bool              `json:"allow" bson:"allow"`
	Signature string            `json:"signature" bson:"signature"`
	CreatedAt time.Time         `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time         `json:"updatedAt" bson:"updatedAt"`
}
