package redis

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

const membershipKeyPrefix = "waitlist:member:"

var (
	setMembershipValue = Set
	getMembershipValue = Get
)

// MembershipCache remembers wallets already known to be paid members.
// Only positive answers are stored; membership is never revoked, so a
// cached entry can only go stale by expiring.
type MembershipCache struct {
	ttl time.Duration
}

// NewMembershipCache creates a cache whose entries live for ttl
func NewMembershipCache(ttl time.Duration) *MembershipCache {
	return &MembershipCache{ttl: ttl}
}

// IsMember reports a cached membership. A miss is (false, nil).
func (c *MembershipCache) IsMember(ctx context.Context, walletAddress string) (bool, error) {
	if client == nil {
		return false, nil
	}
	val, err := getMembershipValue(ctx, membershipKey(walletAddress))
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		return false, err
	}
	return val == "1", nil
}

// MarkMember records a positive membership answer
func (c *MembershipCache) MarkMember(ctx context.Context, walletAddress string) error {
	if client == nil {
		return nil
	}
	return setMembershipValue(ctx, membershipKey(walletAddress), "1", c.ttl)
}

func membershipKey(walletAddress string) string {
	return membershipKeyPrefix + strings.ToLower(strings.TrimSpace(walletAddress))
}
