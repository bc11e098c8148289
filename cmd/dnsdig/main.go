package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"net/netip"
	"os"
	"strings"
	"time"

	"github.com/dnsscience/dnsdig/dnsconfig"
	"github.com/dnsscience/dnsdig/dnsmetrics"
	"github.com/dnsscience/dnsdig/internal/message"
	"github.com/dnsscience/dnsdig/internal/name"
	"github.com/dnsscience/dnsdig/internal/rr"
	"github.com/dnsscience/dnsdig/internal/support"
	"github.com/dnsscience/dnsdig/resolver"
)

var (
	server = flag.String("server", "", "Forwarder address (host:port); empty discovers from /etc/resolv.conf")
	suffix = flag.String("suffix", "", "Name suffix appended to relative query names")
)

func main() {
	flag.Parse()

	opts := dnsconfig.Default()
	opts.NameSuffix = *suffix
	if *server != "" {
		addr, err := netip.ParseAddrPort(*server)
		if err != nil {
			fmt.Fprintf(os.Stderr, "invalid -server: %v\n", err)
			os.Exit(1)
		}
		opts.Servers = []netip.AddrPort{addr}
		opts.DiscoverFromOS = false
	}

	res, err := resolver.NewFromOptions(opts, resolver.BuildOptions{Metrics: dnsmetrics.NewUnregistered()})
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to build resolver: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("dnsdig - interactive resolver shell. Type 'exit' to quit.")
	runREPL(os.Stdin, os.Stdout, res)
}

func runREPL(in *os.File, out *os.File, res *resolver.Resolver) {
	scanner := bufio.NewScanner(in)
	fmt.Fprint(out, "> ")
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			fmt.Fprint(out, "> ")
			continue
		}

		if err := handleLine(line, out, res); err != nil {
			if err == errExit {
				return
			}
			printErr(out, err)
		}
		fmt.Fprint(out, "> ")
	}
}

var errExit = fmt.Errorf("exit")

func handleLine(line string, out *os.File, res *resolver.Resolver) error {
	fields := strings.Fields(line)
	switch fields[0] {
	case "exit", "quit":
		return errExit
	case "server":
		if len(fields) != 2 {
			return support.ErrArgument.Wrap(fmt.Errorf("usage: server host:port"))
		}
		addr, err := netip.ParseAddrPort(fields[1])
		if err != nil {
			return support.ErrArgument.Wrap(err)
		}
		return res.SetServers([]netip.AddrPort{addr})
	case "suffix":
		// Resolver has no setter for NameSuffix after construction, so
		// "suffix" only echoes the startup value; "suffix <name>" is
		// accepted for symmetry with "server" but changes nothing.
		if len(fields) == 1 {
			fmt.Fprintf(out, "suffix %q (set at startup via -suffix)\n", *suffix)
			return nil
		}
		fmt.Fprintln(out, "(suffix is set at startup via -suffix; restart with -suffix", fields[1], ")")
		return nil
	default:
		return runQuery(fields, out, res)
	}
}

// runQuery parses a query line of the form [@server] [qtype] [qclass] qname.
func runQuery(fields []string, out *os.File, res *resolver.Resolver) error {
	var serverOverride *netip.AddrPort
	qType := rr.TypeA
	qClass := rr.ClassIN

	i := 0
	if strings.HasPrefix(fields[i], "@") {
		addr, err := netip.ParseAddrPort(strings.TrimPrefix(fields[i], "@"))
		if err != nil {
			return support.ErrArgument.Wrap(err)
		}
		serverOverride = &addr
		i++
	}
	for i < len(fields)-1 {
		if t, ok := rr.ParseType(fields[i]); ok {
			qType = t
			i++
			continue
		}
		if c, ok := rr.ParseClass(fields[i]); ok {
			qClass = c
			i++
			continue
		}
		break
	}
	if i != len(fields)-1 {
		return support.ErrArgument.Wrap(fmt.Errorf("could not parse query: %q", strings.Join(fields, " ")))
	}

	qName, err := name.Parse(fields[i])
	if err != nil {
		return err
	}

	start := time.Now()
	reply, err := res.Resolve(context.Background(), message.Question{Name: qName, Type: qType, Class: qClass}, serverOverride)
	elapsed := time.Since(start)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, ";; got answer in %s\n", elapsed)
	fmt.Fprintf(out, ";; ->>HEADER<<- rcode: %d, ancount: %d\n", reply.Header.ResponseCode, len(reply.Answers))
	fmt.Fprintln(out, ";; ANSWER SECTION:")
	for _, rec := range reply.Answers {
		fmt.Fprintf(out, "%s\t%d\t%s\t%s\t%v\n", rec.Owner.String(), int(rec.TTL.Seconds()), rec.Class, rec.Type, rec.Data)
	}
	return nil
}

func printErr(out *os.File, err error) {
	switch err.(type) {
	case *support.FormatError, *support.TransportError, *support.ResolutionError, *support.UsageError:
		// These error types already render as "<Kind> - <message>".
		fmt.Fprintln(out, err)
	default:
		fmt.Fprintf(out, "Error - %s\n", err)
	}
}
