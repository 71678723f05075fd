package kubewatch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path/filepath"

	"github.com/u2takey/go-utils/filesystem/homedir"
	"k8s.io/client-go/rest"
	"k8s.io/client-go/tools/clientcmd"
)

// AddressError reports a base address or resource path that could not be
// parsed. It is returned before any network activity happens.
type AddressError struct {
	Address string
	Err     error
}

func (e *AddressError) Error() string {
	return fmt.Sprintf("invalid address %q: %v", e.Address, e.Err)
}

func (e *AddressError) Unwrap() error { return e.Err }

// ConnectionError reports a watch request that could not be established:
// either the transport failed (Err is set, StatusCode is zero) or the server
// answered with a non-2xx status (StatusCode and Status are set).
type ConnectionError struct {
	URL        string
	StatusCode int
	Status     string
	Err        error
}

func (e *ConnectionError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("watch request to %s failed: %s", e.URL, e.Status)
	}
	return fmt.Sprintf("watch request to %s failed: %v", e.URL, e.Err)
}

func (e *ConnectionError) Unwrap() error { return e.Err }

// Cluster is a handle on an API server: a validated base address plus the
// HTTP client used to reach it. A Cluster owns no network resources and can
// be shared across any number of watches.
type Cluster struct {
	base   *url.URL
	client *http.Client
}

// NewCluster validates the given base address (e.g. http://127.0.0.1:8080)
// and returns a cluster handle using the default HTTP client. TLS and
// authentication are the transport's concern; use NewClusterFromKubeconfig
// when credentials are needed.
func NewCluster(host string) (*Cluster, error) {
	base, err := url.Parse(host)
	if err != nil {
		return nil, &AddressError{Address: host, Err: err}
	}
	if base.Scheme == "" || base.Host == "" {
		return nil, &AddressError{Address: host, Err: fmt.Errorf("missing scheme or host")}
	}
	return &Cluster{base: base, client: http.DefaultClient}, nil
}

// NewClusterFromKubeconfig builds a cluster handle from a kubeconfig file:
// the base address comes from the selected context's server field and the
// HTTP client carries the context's TLS and auth configuration. An empty
// path falls back to ~/.kube/config.
func NewClusterFromKubeconfig(kubeconfig string) (*Cluster, error) {
	if kubeconfig == "" {
		if home := homedir.HomeDir(); home != "" {
			kubeconfig = filepath.Join(home, ".kube", "config")
		}
	}

	config, err := clientcmd.BuildConfigFromFlags("", kubeconfig)
	if err != nil {
		return nil, fmt.Errorf("failed to build config: %w", err)
	}

	client, err := rest.HTTPClientFor(config)
	if err != nil {
		return nil, fmt.Errorf("failed to build http client: %w", err)
	}

	cluster, err := NewCluster(config.Host)
	if err != nil {
		return nil, err
	}
	cluster.client = client
	return cluster, nil
}

// open issues GET <base>/<resource>?watch=true and hands back the response
// body. The caller owns the body and must close it on every exit path.
func (c *Cluster) open(ctx context.Context, resource string) (io.ReadCloser, error) {
	ref, err := url.Parse(resource)
	if err != nil {
		return nil, &AddressError{Address: resource, Err: err}
	}
	u := c.base.ResolveReference(ref)
	q := u.Query()
	q.Set("watch", "true")
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, &ConnectionError{URL: u.String(), Err: err}
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, &ConnectionError{URL: u.String(), Err: err}
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		resp.Body.Close()
		return nil, &ConnectionError{URL: u.String(), StatusCode: resp.StatusCode, Status: resp.Status}
	}
	return resp.Body, nil
}
