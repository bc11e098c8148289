package resolver

import (
	"context"
	"net/netip"
	"sort"

	"github.com/dnsscience/dnsdig/internal/message"
	"github.com/dnsscience/dnsdig/internal/name"
	"github.com/dnsscience/dnsdig/internal/rr"
	"github.com/dnsscience/dnsdig/internal/support"
)

// IPHostEntry is the result of a forward GetHostEntry lookup.
type IPHostEntry struct {
	Hostname  name.Name
	Addresses []netip.Addr
}

// MXInfo is the result of GetMXInfo: mail exchangers ordered by
// ascending preference.
type MXInfo struct {
	Domain     name.Name
	Exchangers []MXRecord
}

// MXRecord is one mail-exchanger entry.
type MXRecord struct {
	Preference int16
	Exchange   name.Name
}

// GetHostEntry resolves hostname to its addresses: an A query, and if it
// yields nothing, a follow-up AAAA query.
func (r *Resolver) GetHostEntry(ctx context.Context, hostname name.Name) (IPHostEntry, error) {
	entry := IPHostEntry{Hostname: hostname}

	reply, err := r.Resolve(ctx, message.Question{Name: hostname, Type: rr.TypeA, Class: rr.ClassIN}, nil)
	if err == nil {
		for _, rec := range reply.Answers {
			if a, ok := rec.Data.(rr.AData); ok {
				entry.Addresses = append(entry.Addresses, a.Addr)
			}
		}
	}

	if len(entry.Addresses) == 0 {
		reply, err = r.Resolve(ctx, message.Question{Name: hostname, Type: rr.TypeAAAA, Class: rr.ClassIN}, nil)
		if err != nil {
			return IPHostEntry{}, err
		}
		for _, rec := range reply.Answers {
			if a, ok := rec.Data.(rr.AAAAData); ok {
				entry.Addresses = append(entry.Addresses, a.Addr)
			}
		}
	}

	return entry, nil
}

// GetHostEntryByAddr resolves addr to a hostname via a PTR query against
// its reverse name, returning the first name in the answer section.
func (r *Resolver) GetHostEntryByAddr(ctx context.Context, addr netip.Addr) (name.Name, error) {
	reverseName, err := name.Reverse(addr)
	if err != nil {
		return name.Name{}, err
	}

	reply, err := r.Resolve(ctx, message.Question{Name: reverseName, Type: rr.TypePTR, Class: rr.ClassIN}, nil)
	if err != nil {
		return name.Name{}, err
	}
	for _, rec := range reply.Answers {
		if p, ok := rec.Data.(rr.NameData); ok {
			return p.Target, nil
		}
	}
	return name.Name{}, support.ErrNoAnswerRecords
}

// GetMXInfo resolves domain's mail exchangers, sorted by ascending
// preference.
func (r *Resolver) GetMXInfo(ctx context.Context, domain name.Name) (MXInfo, error) {
	reply, err := r.Resolve(ctx, message.Question{Name: domain, Type: rr.TypeMX, Class: rr.ClassIN}, nil)
	if err != nil {
		return MXInfo{}, err
	}

	info := MXInfo{Domain: domain}
	for _, rec := range reply.Answers {
		if mx, ok := rec.Data.(rr.MXData); ok {
			info.Exchangers = append(info.Exchangers, MXRecord{Preference: mx.Preference, Exchange: mx.Exchange})
		}
	}
	sort.SliceStable(info.Exchangers, func(i, j int) bool {
		return info.Exchangers[i].Preference < info.Exchangers[j].Preference
	})
	return info, nil
}

// GetNameServers resolves domain's NS records, preserving answer order.
func (r *Resolver) GetNameServers(ctx context.Context, domain name.Name) ([]name.Name, error) {
	reply, err := r.Resolve(ctx, message.Question{Name: domain, Type: rr.TypeNS, Class: rr.ClassIN}, nil)
	if err != nil {
		return nil, err
	}
	var servers []name.Name
	for _, rec := range reply.Answers {
		if ns, ok := rec.Data.(rr.NameData); ok {
			servers = append(servers, ns.Target)
		}
	}
	return servers, nil
}
