package tagging

import (
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/route53"
	r53types "github.com/aws/aws-sdk-go-v2/service/route53/types"

	"github.com/yairfalse/merkki/types"
)

// Route53Strategy tags hosted zones. CreateHostedZone reports the id as
// "/hostedzone/Z123..."; ChangeTagsForResource wants the bare zone id.
type Route53Strategy struct {
	client *route53.Client
}

// Tag implements Strategy.
func (s *Route53Strategy) Tag(ctx context.Context, resourceID string, tags types.TagSet) error {
	zoneID := strings.TrimPrefix(resourceID, "/hostedzone/")

	_, err := s.client.ChangeTagsForResource(ctx, &route53.ChangeTagsForResourceInput{
		ResourceType: r53types.TagResourceTypeHostedzone,
		ResourceId:   aws.String(zoneID),
		AddTags:      route53Tags(tags),
	})
	if err != nil {
		return fmt.Errorf("failed to tag hosted zone %s: %w", resourceID, err)
	}
	return nil
}

func route53Tags(tags types.TagSet) []r53types.Tag {
	result := make([]r53types.Tag, len(tags))
	for i, t := range tags {
		result[i] = r53types.Tag{Key: aws.String(t.Key), Value: aws.String(t.Value)}
	}
	return result
}
