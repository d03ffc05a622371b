package valorant

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/http"
)

// clientPlatform is the static platform identity blob sent as
// X-Riot-ClientPlatform. Constant for the process lifetime.
var clientPlatform = base64.StdEncoding.EncodeToString([]byte(
	`{"platformType":"PC","platformOS":"Windows","platformOSVersion":"10.0.19042.1.256.64bit","platformChipset":"Unknown"}`,
))

// ClientPlatform is the value sent as X-Riot-ClientPlatform.
func ClientPlatform() string {
	return clientPlatform
}

type versionResponse struct {
	Data struct {
		RiotClientVersion string `json:"riotClientVersion"`
		RiotClientBuild   string `json:"riotClientBuild"`
		BranchBuildDate   string `json:"buildDate"`
	} `json:"data"`
}

// ensureVersion fetches the live client version metadata once per client.
// The version feeds X-Riot-ClientVersion, the build feeds the RiotClient
// user agent. Both can be pinned through Opts.
func (c *Client) ensureVersion(ctx context.Context) error {
	if c.version != "" && c.ua != "" {
		return nil
	}
	resp, err := c.send(ctx, http.MethodGet, c.opts.VersionURL, nil, 0, "", "")
	if err != nil {
		return err
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &StatusError{Code: resp.StatusCode, Body: resp.Body}
	}
	v, err := decode[versionResponse](resp.Body)
	if err != nil {
		return err
	}
	if v.Data.RiotClientVersion == "" {
		return fmt.Errorf("%w: empty client version", ErrMalformedResponse)
	}
	if c.version == "" {
		c.version = v.Data.RiotClientVersion
	}
	if c.ua == "" {
		c.ua = fmt.Sprintf("RiotClient/%s riot-status (Windows;10;;Professional, x64)", v.Data.RiotClientBuild)
	}
	return nil
}
