package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/teranos/commons-repost/am"
	"github.com/teranos/commons-repost/commons"
	"github.com/teranos/commons-repost/destination"
	"github.com/teranos/commons-repost/errors"
)

// loadDestinations resolves the enabled destinations from the merged
// configuration, narrowed to names when any are given.
func loadDestinations(names []string) ([]destination.Destination, error) {
	cfg, err := am.Load()
	if err != nil {
		return nil, errors.Wrap(err, "failed to load config")
	}

	dests, err := destination.FromConfigs(cfg)
	if err != nil {
		return nil, err
	}
	return destination.Select(dests, names...)
}

// loadDestination resolves exactly one destination by name.
func loadDestination(name string) (destination.Destination, error) {
	dests, err := loadDestinations([]string{name})
	if err != nil {
		return destination.Destination{}, err
	}
	return dests[0], nil
}

// commonsLimits returns the configured Commons acceptance limits.
func commonsLimits() (commons.Limits, error) {
	cfg, err := am.Load()
	if err != nil {
		return commons.Limits{}, errors.Wrap(err, "failed to load config")
	}
	return commons.Limits{
		MaxSourceBytes: cfg.Commons.MaxSourceBytes,
		MediaTypes:     cfg.Commons.MediaTypes,
	}, nil
}

// readInput reads path, or standard input when path is "-".
func readInput(path string, stdin io.Reader) ([]byte, error) {
	if path == "-" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return nil, errors.Wrap(err, "failed to read standard input")
		}
		return data, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read %s", path)
	}
	return data, nil
}

func writeJSON(w io.Writer, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}
