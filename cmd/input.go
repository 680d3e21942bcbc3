package cmd

import (
	"fmt"

	"github.com/s0up4200/dnburn/urlrecord"
)

// parseURLArgs turns command arguments into URL input. With asJSON each
// argument is a JSON document: a string, an object with url and priority,
// or an array of those.
func parseURLArgs(args []string, asJSON bool) (urlrecord.Input, error) {
	if !asJSON {
		return urlrecord.Addresses(args...), nil
	}

	items := make(urlrecord.Collection, 0, len(args))
	for i, arg := range args {
		in, err := urlrecord.ParseInput([]byte(arg))
		if err != nil {
			return nil, fmt.Errorf("argument %d: %w", i+1, err)
		}
		if c, ok := in.(urlrecord.Collection); ok {
			items = append(items, c...)
			continue
		}
		items = append(items, in)
	}
	return items, nil
}
