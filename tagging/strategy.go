package tagging

import (
	"context"
	"fmt"

	"github.com/yairfalse/merkki/types"
)

// Strategy applies a tag set to one resource of a fixed type. Each
// implementation adapts the generic TagSet to the call shape its
// service requires; none retries internally, retry policy belongs to
// the caller.
type Strategy interface {
	Tag(ctx context.Context, resourceID string, tags types.TagSet) error
}

// arn assembles a standard AWS ARN.
func arn(service, region, accountID, suffix string) string {
	return fmt.Sprintf("arn:aws:%s:%s:%s:%s", service, region, accountID, suffix)
}
