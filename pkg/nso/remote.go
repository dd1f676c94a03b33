package nso

import (
	"crypto/tls"
	"net/http"
	"net/url"

	"github.com/apex/log"
	"github.com/blacktop/ranger"
	"github.com/pkg/errors"
)

// RemoteConfig configures access to an NSO served over HTTP.
type RemoteConfig struct {
	Proxy     string
	Insecure  bool
	UserAgent string
}

func getProxy(proxy string) func(*http.Request) (*url.URL, error) {
	if len(proxy) > 0 {
		proxyURL, err := url.Parse(proxy)
		if err != nil {
			log.WithError(err).Error("bad proxy url")
		}
		return http.ProxyURL(proxyURL)
	}
	return http.ProxyFromEnvironment
}

// NewRemoteReader returns an io.ReaderAt over an NSO at the given URL,
// backed by HTTP range requests, plus the remote content length. Only the
// header and requested segments are fetched.
func NewRemoteReader(nsoURL string, config *RemoteConfig) (*ranger.Reader, int64, error) {
	if config == nil {
		config = &RemoteConfig{}
	}
	if config.UserAgent == "" {
		config.UserAgent = "go-nso"
	}

	u, err := url.Parse(nsoURL)
	if err != nil {
		return nil, 0, errors.Wrap(err, "failed to parse url")
	}

	reader, err := ranger.NewReader(&ranger.HTTPRanger{
		URL:       u,
		UserAgent: config.UserAgent,
		Client: &http.Client{
			Transport: &http.Transport{
				Proxy:           getProxy(config.Proxy),
				TLSClientConfig: &tls.Config{InsecureSkipVerify: config.Insecure},
			},
		},
	})
	if err != nil {
		return nil, 0, errors.Wrap(err, "failed to create ranger reader")
	}

	length, err := reader.Length()
	if err != nil {
		return nil, 0, errors.Wrap(err, "failed to get reader length")
	}

	return reader, length, nil
}

// OpenRemote parses an NSO header over HTTP range requests.
func OpenRemote(nsoURL string, config *RemoteConfig) (*File, error) {
	reader, _, err := NewRemoteReader(nsoURL, config)
	if err != nil {
		return nil, err
	}
	return Parse(reader)
}
