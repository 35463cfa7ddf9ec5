package blockchain

import (
	"net/url"

	"github.com/bsv-blockchain/teranode-consensus/errors"
	"github.com/bsv-blockchain/teranode-consensus/stores/blockchain/memory"
	"github.com/bsv-blockchain/teranode-consensus/ulogger"
)

func NewStore(logger ulogger.Logger, storeURL *url.URL) (Store, error) {
	switch storeURL.Scheme {
	case "memory":
		return memory.New(logger), nil
	}

	return nil, errors.NewStorageError("unknown scheme: %s", storeURL.Scheme)
}
