package commercetools

import (
	"context"
	"strings"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"

	"github.com/amal-thomson/pixelphraser/pkg/retry"
)

// newTokenSource builds a client-credentials token source against the
// platform auth endpoint. Token acquisition is wrapped in a bounded backoff:
// fetching a token has no side effects, so retrying it does not change the
// pipeline's no-retry semantics.
func newTokenSource(ctx context.Context, authURL, clientID, clientSecret string, scopes []string, retryCfg retry.Config) oauth2.TokenSource {
	cc := &clientcredentials.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		TokenURL:     strings.TrimRight(authURL, "/") + "/oauth/token",
		Scopes:       scopes,
	}
	base := cc.TokenSource(ctx)
	return oauth2.ReuseTokenSource(nil, &retryTokenSource{
		ctx:  ctx,
		base: base,
		cfg:  retryCfg,
	})
}

type retryTokenSource struct {
	ctx  context.Context
	base oauth2.TokenSource
	cfg  retry.Config
}

func (s *retryTokenSource) Token() (*oauth2.Token, error) {
	var token *oauth2.Token
	err := retry.Do(s.ctx, s.cfg, func() error {
		t, err := s.base.Token()
		if err != nil {
			return err
		}
		token = t
		return nil
	})
	if err != nil {
		return nil, err
	}
	return token, nil
}
