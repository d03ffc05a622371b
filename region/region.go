package region

import (
	"errors"
	"fmt"
	"sort"
)

var ErrUnknownRegion = errors.New("unknown region affinity")

// Info is the routing triple for one account affinity: the region and shard
// codes used to build the game server URLs, plus the chat identifiers for the
// XMPP transport (not implemented here, carried for callers that need them).
type Info struct {
	Region     string
	Shard      string
	ChatRegion string
	ChatHost   string
}

// Endpoints are the two regional server families. PD serves persistent
// account, match and store data. GLZ serves pre-game and live-game data.
type Endpoints struct {
	PD  string
	GLZ string
}

var regions = map[string]Info{
	"as2":    {Region: "as2", Shard: "as2", ChatRegion: "as2", ChatHost: "as2.chat.si.riotgames.com"},
	"asia":   {Region: "asia", Shard: "asia", ChatRegion: "jp1", ChatHost: "jp1.chat.si.riotgames.com"},
	"br1":    {Region: "br1", Shard: "br1", ChatRegion: "br1", ChatHost: "br.chat.si.riotgames.com"},
	"eu":     {Region: "eu", Shard: "eu", ChatRegion: "ru1", ChatHost: "ru1.chat.si.riotgames.com"},
	"eu3":    {Region: "eu3", Shard: "eu3", ChatRegion: "eu3", ChatHost: "eu3.chat.si.riotgames.com"},
	"eun1":   {Region: "eun1", Shard: "eun1", ChatRegion: "eu2", ChatHost: "eun1.chat.si.riotgames.com"},
	"euw1":   {Region: "euw1", Shard: "euw1", ChatRegion: "eu1", ChatHost: "euw1.chat.si.riotgames.com"},
	"jp1":    {Region: "jp1", Shard: "jp1", ChatRegion: "jp1", ChatHost: "jp1.chat.si.riotgames.com"},
	"kr1":    {Region: "kr1", Shard: "kr1", ChatRegion: "kr1", ChatHost: "kr1.chat.si.riotgames.com"},
	"la1":    {Region: "la1", Shard: "la1", ChatRegion: "la1", ChatHost: "la1.chat.si.riotgames.com"},
	"la2":    {Region: "la2", Shard: "la2", ChatRegion: "la2", ChatHost: "la2.chat.si.riotgames.com"},
	"na1":    {Region: "na1", Shard: "na1", ChatRegion: "na1", ChatHost: "na2.chat.si.riotgames.com"},
	"oc1":    {Region: "oc1", Shard: "oc1", ChatRegion: "oc1", ChatHost: "oc1.chat.si.riotgames.com"},
	"pbe1":   {Region: "pbe1", Shard: "pbe1", ChatRegion: "pb1", ChatHost: "pbe1.chat.si.riotgames.com"},
	"ru1":    {Region: "ru1", Shard: "ru1", ChatRegion: "ru1", ChatHost: "ru1.chat.si.riotgames.com"},
	"sea1":   {Region: "sea1", Shard: "sea1", ChatRegion: "sa1", ChatHost: "sa1.chat.si.riotgames.com"},
	"sea2":   {Region: "sea2", Shard: "sea2", ChatRegion: "sa2", ChatHost: "sa2.chat.si.riotgames.com"},
	"sea3":   {Region: "sea3", Shard: "sea3", ChatRegion: "sa3", ChatHost: "sa3.chat.si.riotgames.com"},
	"sea4":   {Region: "sea4", Shard: "sea4", ChatRegion: "sa4", ChatHost: "sa4.chat.si.riotgames.com"},
	"tr1":    {Region: "tr1", Shard: "tr1", ChatRegion: "tr1", ChatHost: "tr1.chat.si.riotgames.com"},
	"us":     {Region: "us", Shard: "us", ChatRegion: "la1", ChatHost: "la1.chat.si.riotgames.com"},
	"us-br1": {Region: "us-br1", Shard: "us-br1", ChatRegion: "br1", ChatHost: "br.chat.si.riotgames.com"},
	"us-la2": {Region: "us-la2", Shard: "us-la2", ChatRegion: "la2", ChatHost: "la2.chat.si.riotgames.com"},
	"us2":    {Region: "us2", Shard: "us2", ChatRegion: "us2", ChatHost: "us2.chat.si.riotgames.com"},
}

// FromAffinity maps the "live" affinity code returned by the geolocation
// service to its routing info. A code without a table entry means the table
// is stale, not a transient fault; callers should not retry.
func FromAffinity(code string) (Info, error) {
	r, ok := regions[code]
	if !ok {
		return Info{}, fmt.Errorf("%w: %q", ErrUnknownRegion, code)
	}
	return r, nil
}

// Routes derives the base server URLs for a resolved region. Pure string
// composition, same Info always yields the same Endpoints.
func Routes(r Info) Endpoints {
	if r.Region == "" || r.Shard == "" {
		panic("region: Routes called with zero Info")
	}
	return Endpoints{
		PD:  fmt.Sprintf("https://pd.%s.a.pvp.net", r.Region),
		GLZ: fmt.Sprintf("https://glz-%s-1.%s.a.pvp.net", r.Region, r.Shard),
	}
}

// Affinities returns every known affinity code, sorted.
func Affinities() []string {
	codes := make([]string, 0, len(regions))
	for code := range regions {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}
