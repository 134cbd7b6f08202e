package secretshare

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"
)

const (
	keeperFile = "shares.ssk"
	saltSize   = 16
)

// shareDir resolves the keeper directory: SECRETSHARE_DIR if set, otherwise
// ~/.secretshare, created with owner-only permissions.
func shareDir() (string, error) {
	dir := os.Getenv("SECRETSHARE_DIR")
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolving home directory: %w", err)
		}
		dir = filepath.Join(home, ".secretshare")
	}
	if err := os.MkdirAll(dir, 0700); err != nil {
		return "", fmt.Errorf("creating %s: %w", dir, err)
	}
	return dir, nil
}

// KeeperFilePath returns the path of the default keeper storage file.
func KeeperFilePath() (string, error) {
	dir, err := shareDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, keeperFile), nil
}

// Bundle is one named set of shares held by the keeper. Threshold is
// recorded for the custodian's benefit only; the shares themselves carry no
// such provenance.
type Bundle struct {
	Shares    []string  `json:"shares"`
	Threshold int       `json:"threshold"`
	CreatedAt time.Time `json:"createdAt"`
}

// Keeper is an encrypted at-rest store for share bundles. The envelope on
// disk is base64(salt || nonce || ciphertext) with an AES-GCM key derived
// from the master password via Argon2id.
type Keeper struct {
	mu      sync.Mutex
	backend StorageBackend
	bundles map[string]Bundle
	salt    []byte
	gcm     cipher.AEAD
}

// NewKeeper returns a locked Keeper over the given backend.
func NewKeeper(backend StorageBackend) *Keeper {
	return &Keeper{
		backend: backend,
		bundles: make(map[string]Bundle),
	}
}

// OpenDefaultKeeper unlocks a keeper over the default file location.
func OpenDefaultKeeper(password []byte) (*Keeper, error) {
	path, err := KeeperFilePath()
	if err != nil {
		return nil, err
	}
	k := NewKeeper(NewFileStorage(path))
	if err := k.Unlock(password); err != nil {
		return nil, err
	}
	return k, nil
}

// Unlock derives the cipher from password and loads the stored bundles. If
// no envelope exists yet, a fresh salt is drawn and an empty store is
// written, so the password given at first unlock becomes the master
// password.
func (k *Keeper) Unlock(password []byte) error {
	k.mu.Lock()
	defer k.mu.Unlock()

	enc, err := k.backend.Load()
	if os.IsNotExist(err) {
		salt := make([]byte, saltSize)
		if _, err := io.ReadFull(rand.Reader, salt); err != nil {
			return fmt.Errorf("drawing salt: %w", err)
		}
		if err := k.initCipher(password, salt); err != nil {
			return err
		}
		k.bundles = make(map[string]Bundle)
		return k.save()
	}
	if err != nil {
		return err
	}

	decoded, err := base64.StdEncoding.DecodeString(string(enc))
	if err != nil {
		return fmt.Errorf("corrupt keeper file: %w", err)
	}
	if len(decoded) < saltSize {
		return fmt.Errorf("corrupt keeper file: too short")
	}
	if err := k.initCipher(password, decoded[:saltSize]); err != nil {
		return err
	}
	data := decoded[saltSize:]
	if len(data) < k.gcm.NonceSize() {
		return fmt.Errorf("corrupt keeper file: missing nonce")
	}
	nonce, ciphertext := data[:k.gcm.NonceSize()], data[k.gcm.NonceSize():]
	plain, err := k.gcm.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return fmt.Errorf("unlocking keeper (wrong password?): %w", err)
	}
	bundles := make(map[string]Bundle)
	if err := json.Unmarshal(plain, &bundles); err != nil {
		return fmt.Errorf("decoding keeper contents: %w", err)
	}
	k.bundles = bundles
	return nil
}

func (k *Keeper) initCipher(password, salt []byte) error {
	key := DeriveKey(password, salt)
	block, err := aes.NewCipher(key)
	if err != nil {
		return fmt.Errorf("creating cipher: %w", err)
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return fmt.Errorf("creating GCM: %w", err)
	}
	k.salt = salt
	k.gcm = gcm
	return nil
}

// save encrypts and persists the bundles. Callers hold k.mu.
func (k *Keeper) save() error {
	if k.gcm == nil {
		return fmt.Errorf("keeper is locked")
	}
	plain, err := json.Marshal(k.bundles)
	if err != nil {
		return err
	}
	nonce := make([]byte, k.gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return fmt.Errorf("drawing nonce: %w", err)
	}
	ciphertext := k.gcm.Seal(nonce, nonce, plain, nil)
	final := append(append([]byte(nil), k.salt...), ciphertext...)
	return k.backend.Save([]byte(base64.StdEncoding.EncodeToString(final)))
}

// Keep stores shares under name, overwriting any previous bundle with that
// name.
func (k *Keeper) Keep(name string, shares []Share, threshold int) error {
	encoded := make([]string, len(shares))
	for i, s := range shares {
		encoded[i] = EncodeShare(s)
	}
	k.mu.Lock()
	defer k.mu.Unlock()
	k.bundles[name] = Bundle{
		Shares:    encoded,
		Threshold: threshold,
		CreatedAt: time.Now().UTC(),
	}
	return k.save()
}

// Retrieve returns the bundle stored under name.
func (k *Keeper) Retrieve(name string) (Bundle, error) {
	k.mu.Lock()
	defer k.mu.Unlock()
	b, ok := k.bundles[name]
	if !ok {
		return Bundle{}, fmt.Errorf("no bundle named %q", name)
	}
	return b, nil
}

// List returns the stored bundle names in sorted order.
func (k *Keeper) List() []string {
	k.mu.Lock()
	defer k.mu.Unlock()
	names := make([]string, 0, len(k.bundles))
	for name := range k.bundles {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Delete removes the bundle stored under name.
func (k *Keeper) Delete(name string) error {
	k.mu.Lock()
	defer k.mu.Unlock()
	if _, ok := k.bundles[name]; !ok {
		return fmt.Errorf("no bundle named %q", name)
	}
	delete(k.bundles, name)
	return k.save()
}

// Export returns a JSON dump of all bundles, in the clear, for migration or
// offline backup. Handle the output like the secrets it derives from.
func (k *Keeper) Export() (string, error) {
	k.mu.Lock()
	defer k.mu.Unlock()
	export := struct {
		Bundles   map[string]Bundle `json:"bundles"`
		Timestamp time.Time         `json:"timestamp"`
	}{
		Bundles:   k.bundles,
		Timestamp: time.Now().UTC(),
	}
	b, err := json.MarshalIndent(export, "", "  ")
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// Import merges bundles from a JSON export produced by Export. Existing
// names are overwritten.
func (k *Keeper) Import(jsonData string) error {
	var imp struct {
		Bundles map[string]Bundle `json:"bundles"`
	}
	if err := json.Unmarshal([]byte(jsonData), &imp); err != nil {
		return err
	}
	k.mu.Lock()
	defer k.mu.Unlock()
	for name, b := range imp.Bundles {
		k.bundles[name] = b
	}
	return k.save()
}
