package session

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// StorageKey é o nome da única entrada persistida.
const StorageKey = "usuario"

// ErrNoSnapshot indica que não há sessão persistida.
var ErrNoSnapshot = errors.New("session: nenhum snapshot persistido")

// Store é o armazenamento local da sessão (equivalente ao localStorage).
type Store interface {
	Load() ([]byte, error)
	Save(data []byte) error
	Remove() error
}

// FileStore grava o snapshot em <dir>/usuario.json.
type FileStore struct {
	path string
}

// NewFileStore constrói o store no diretório informado.
func NewFileStore(dir string) *FileStore {
	return &FileStore{path: filepath.Join(dir, StorageKey+".json")}
}

// Path devolve o arquivo usado.
func (s *FileStore) Path() string { return s.path }

// Load lê o snapshot; ErrNoSnapshot quando o arquivo não existe.
func (s *FileStore) Load() ([]byte, error) {
	b, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ErrNoSnapshot
		}
		return nil, fmt.Errorf("session: ler snapshot: %w", err)
	}
	return b, nil
}

// Save grava via arquivo temporário + rename para não deixar snapshot pela metade.
func (s *FileStore) Save(data []byte) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("session: criar diretório: %w", err)
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("session: gravar snapshot: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("session: gravar snapshot: %w", err)
	}
	return nil
}

// Remove apaga o snapshot; não existir não é erro.
func (s *FileStore) Remove() error {
	if err := os.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("session: remover snapshot: %w", err)
	}
	return nil
}

// MemoryStore guarda o snapshot em memória.
type MemoryStore struct {
	mu   sync.Mutex
	data []byte
}

// NewMemoryStore cria o store, opcionalmente já com um snapshot.
func NewMemoryStore(initial []byte) *MemoryStore {
	return &MemoryStore{data: initial}
}

func (s *MemoryStore) Load() ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.data == nil {
		return nil, ErrNoSnapshot
	}
	out := make([]byte, len(s.data))
	copy(out, s.data)
	return out, nil
}

func (s *MemoryStore) Save(data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data = append([]byte(nil), data...)
	return nil
}

func (s *MemoryStore) Remove() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data = nil
	return nil
}
