// Package keystore is a minimal in-memory key store: it maps pay-to-pubkey-
// hash destinations back to their private keys so transaction inputs can be
// signed against a locking script.
package keystore

import (
	"errors"
	"sync"

	"github.com/btcsuite/btcd/btcec"
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/btcsuite/btcd/txscript"
	"github.com/btcsuite/btcd/wire"
	"github.com/btcsuite/btcutil"
)

var (
	ErrUnknownAddress  = errors.New("keystore: no key for address")
	ErrUnusableScript  = errors.New("keystore: locking script has no usable destination")
	ErrInputOutOfRange = errors.New("keystore: input index out of range")
)

type keyEntry struct {
	priv       *btcec.PrivateKey
	compressed bool
}

type KeyStore struct {
	mtx  sync.RWMutex
	keys map[string]keyEntry
}

func New() *KeyStore {
	return &KeyStore{keys: make(map[string]keyEntry)}
}

// AddKey registers a private key and returns the pay-to-pubkey-hash address
// it can sign for. The compressed flag selects the public key serialization
// the address commits to.
func (ks *KeyStore) AddKey(
	priv *btcec.PrivateKey,
	compressed bool,
	net *chaincfg.Params,
) (btcutil.Address, error) {
	var pubKey []byte
	if compressed {
		pubKey = priv.PubKey().SerializeCompressed()
	} else {
		pubKey = priv.PubKey().SerializeUncompressed()
	}
	addr, err := btcutil.NewAddressPubKeyHash(btcutil.Hash160(pubKey), net)
	if err != nil {
		return nil, err
	}
	ks.mtx.Lock()
	ks.keys[addr.EncodeAddress()] = keyEntry{priv: priv, compressed: compressed}
	ks.mtx.Unlock()
	return addr, nil
}

func (ks *KeyStore) KeyForAddress(addr btcutil.Address) (*btcec.PrivateKey, bool) {
	ks.mtx.RLock()
	entry, found := ks.keys[addr.EncodeAddress()]
	ks.mtx.RUnlock()
	return entry.priv, found
}

// SignInput installs an unlocking script on the given input, signing against
// the locking script the input spends.
func (ks *KeyStore) SignInput(
	tx *wire.MsgTx,
	idx int,
	pkScript []byte,
	hashType txscript.SigHashType,
	net *chaincfg.Params,
) error {
	if idx < 0 || idx >= len(tx.TxIn) {
		return ErrInputOutOfRange
	}
	_, addrs, _, err := txscript.ExtractPkScriptAddrs(pkScript, net)
	if err != nil {
		return err
	}
	if len(addrs) != 1 {
		return ErrUnusableScript
	}
	ks.mtx.RLock()
	entry, found := ks.keys[addrs[0].EncodeAddress()]
	ks.mtx.RUnlock()
	if !found {
		return ErrUnknownAddress
	}
	sigScript, err := txscript.SignatureScript(
		tx, idx, pkScript, hashType, entry.priv, entry.compressed)
	if err != nil {
		return err
	}
	tx.TxIn[idx].SignatureScript = sigScript
	return nil
}
