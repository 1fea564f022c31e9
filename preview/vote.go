package preview

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/fwojciec/rpeek"
)

// VotePath is the voting endpoint.
const VotePath = "/api/vote/.json"

// Vote directions.
const (
	VoteDown  = -1
	VoteClear = 0
	VoteUp    = 1
)

// Vote casts a vote on the comment itemID. It needs a logged-in session and
// is never retried.
func (s *Surface) Vote(ctx context.Context, itemID string, dir int) error {
	if dir < VoteDown || dir > VoteUp {
		return rpeek.Errorf(rpeek.EINVALID, "invalid vote direction %d", dir)
	}
	itemID = strings.TrimPrefix(itemID, string(rpeek.KindComment)+"_")
	if itemID == "" {
		return rpeek.Errorf(rpeek.EINVALID, "missing item id")
	}

	session := s.svc.Session(ctx)
	if !session.LoggedIn() {
		return rpeek.Errorf(rpeek.EUNAUTHORIZED, "log in to vote")
	}

	_, err := s.svc.Transport.Do(ctx, &rpeek.Request{
		URL:    VotePath,
		Method: http.MethodPost,
		Data: url.Values{
			"id":  {string(rpeek.KindComment) + "_" + itemID},
			"dir": {strconv.Itoa(dir)},
			"uh":  {session.Modhash},
		},
		Timeout: s.svc.timeout(),
	})
	if err != nil {
		s.svc.logger().Warn("vote failed", "item", itemID, "dir", dir, "err", err)
		return err
	}
	return nil
}
