package tgutil

import (
	"bufio"
	"context"
	"encoding/base64"
	"fmt"
	"net"
	"net/http"
	"net/url"

	"github.com/gotd/td/telegram/dcs"
	"golang.org/x/net/proxy"
)

// connectDialer tunnels MTProto connections through an HTTP CONNECT proxy.
type connectDialer struct {
	proxy   *url.URL
	forward proxy.Dialer
}

func (d *connectDialer) proxyAddr() string {
	if d.proxy.Port() != "" {
		return d.proxy.Host
	}
	port := "80"
	if d.proxy.Scheme == "https" {
		port = "443"
	}
	return net.JoinHostPort(d.proxy.Hostname(), port)
}

func (d *connectDialer) DialContext(ctx context.Context, network, addr string) (net.Conn, error) {
	var (
		conn net.Conn
		err  error
	)
	if cd, ok := d.forward.(proxy.ContextDialer); ok {
		conn, err = cd.DialContext(ctx, "tcp", d.proxyAddr())
	} else {
		conn, err = d.forward.Dial("tcp", d.proxyAddr())
	}
	if err != nil {
		return nil, fmt.Errorf("dial proxy: %w", err)
	}

	req := &http.Request{
		Method: http.MethodConnect,
		URL:    &url.URL{Opaque: addr},
		Host:   addr,
		Header: make(http.Header),
	}
	if u := d.proxy.User; u != nil {
		pass, _ := u.Password()
		req.Header.Set("Proxy-Authorization", "Basic "+base64.StdEncoding.EncodeToString([]byte(u.Username()+":"+pass)))
	}
	if err := req.Write(conn); err != nil {
		conn.Close()
		return nil, fmt.Errorf("write CONNECT: %w", err)
	}
	resp, err := http.ReadResponse(bufio.NewReader(conn), req)
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("read CONNECT response: %w", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		conn.Close()
		return nil, fmt.Errorf("proxy CONNECT failed: %s", resp.Status)
	}
	return conn, nil
}

func newProxyDialer(rawURL string) (proxy.ContextDialer, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, err
	}
	switch u.Scheme {
	case "http", "https":
		return &connectDialer{proxy: u, forward: proxy.Direct}, nil
	case "socks5", "socks5h":
		d, err := proxy.FromURL(u, proxy.Direct)
		if err != nil {
			return nil, err
		}
		cd, ok := d.(proxy.ContextDialer)
		if !ok {
			return nil, fmt.Errorf("socks dialer does not support contexts")
		}
		return cd, nil
	}
	return nil, fmt.Errorf("unsupported proxy scheme: %s", u.Scheme)
}

// NewProxyResolver returns the default DC resolver, or one that dials
// through proxyURL when it is set.
func NewProxyResolver(proxyURL string) (dcs.Resolver, error) {
	if proxyURL == "" {
		return dcs.DefaultResolver(), nil
	}
	dialer, err := newProxyDialer(proxyURL)
	if err != nil {
		return nil, err
	}
	return dcs.Plain(dcs.PlainOptions{Dial: dialer.DialContext}), nil
}
