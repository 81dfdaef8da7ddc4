package partition

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// Kind - форма общего документа
type Kind int

const (
	// KindPartitioned - документ вида {"users": {...}}
	KindPartitioned Kind = iota
	// KindLegacy - документ до разделения: коллекции лежат на верхнем уровне
	KindLegacy
)

func (k Kind) String() string {
	switch k {
	case KindLegacy:
		return "legacy"
	default:
		return "partitioned"
	}
}

// VersionAbsent - версия документа, которого еще нет в хранилище.
// Запись с этой версией создает документ и не перезаписывает чужой, созданный раньше.
const VersionAbsent = "absent"

// Document - общий документ всех пользователей, разобранный один раз на границе.
// Разделы хранятся в исходном виде, поэтому запись одного пользователя
// не переписывает байты остальных.
type Document struct {
	Kind    Kind
	Version string

	keys   []string
	users  map[string]json.RawMessage
	legacy json.RawMessage
}

// NewDocument создает пустой разделенный документ
func NewDocument() *Document {
	return &Document{
		Kind:  KindPartitioned,
		users: make(map[string]json.RawMessage),
	}
}

// Decode разбирает документ и определяет его форму
func Decode(data []byte) (*Document, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return NewDocument(), nil
	}

	var top map[string]json.RawMessage
	if err := json.Unmarshal(data, &top); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedDocument, err)
	}

	if users, ok := top["users"]; ok && !isNull(users) {
		keys, values, err := decodeOrdered(users)
		if err != nil {
			return nil, fmt.Errorf("%w: users: %v", ErrMalformedDocument, err)
		}
		return &Document{Kind: KindPartitioned, keys: keys, users: values}, nil
	}

	for _, name := range legacyCollections {
		if _, ok := top[name]; ok {
			return &Document{Kind: KindLegacy, legacy: append(json.RawMessage(nil), data...)}, nil
		}
	}

	return NewDocument(), nil
}

// Usernames возвращает ключи разделов в порядке документа
func (d *Document) Usernames() []string {
	return append([]string(nil), d.keys...)
}

// Len возвращает количество разделов
func (d *Document) Len() int {
	return len(d.keys)
}

// Raw возвращает раздел пользователя в исходном виде
func (d *Document) Raw(username string) (json.RawMessage, bool) {
	raw, ok := d.users[username]
	return raw, ok
}

// Partition возвращает нормализованный раздел пользователя
func (d *Document) Partition(username string) (UserPartition, bool, error) {
	raw, ok := d.users[username]
	if !ok {
		return UserPartition{}, false, nil
	}

	p, err := DecodePartition(raw)
	if err != nil {
		var malformed *MalformedError
		if errors.As(err, &malformed) {
			malformed.Username = username
		}
		return UserPartition{}, true, err
	}

	return p, true, nil
}

// SetPartition целиком заменяет раздел пользователя
func (d *Document) SetPartition(username string, p UserPartition) error {
	if d.Kind != KindPartitioned {
		return ErrLegacyDocument
	}

	p.Normalize()
	raw, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("marshal partition %s: %w", username, err)
	}

	if d.users == nil {
		d.users = make(map[string]json.RawMessage)
	}
	if _, ok := d.users[username]; !ok {
		d.keys = append(d.keys, username)
	}
	d.users[username] = raw

	return nil
}

// LegacyPayload возвращает данные документа старого формата
func (d *Document) LegacyPayload() (UserPartition, error) {
	if d.Kind != KindLegacy {
		return UserPartition{}, fmt.Errorf("%w: document is %s", ErrMalformedDocument, d.Kind)
	}
	return DecodePartition(d.legacy)
}

// LegacyRaw возвращает исходные байты документа старого формата
func (d *Document) LegacyRaw() json.RawMessage {
	return d.legacy
}

// MarshalJSON сериализует документ; порядок пользователей сохраняется
func (d *Document) MarshalJSON() ([]byte, error) {
	if d.Kind == KindLegacy {
		return append([]byte(nil), d.legacy...), nil
	}

	var buf bytes.Buffer
	buf.WriteString(`{"users":{`)
	for i, key := range d.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		name, err := json.Marshal(key)
		if err != nil {
			return nil, err
		}
		buf.Write(name)
		buf.WriteByte(':')
		if err := json.Compact(&buf, d.users[key]); err != nil {
			return nil, fmt.Errorf("compact partition %s: %w", key, err)
		}
	}
	buf.WriteString(`}}`)

	return buf.Bytes(), nil
}

func decodeOrdered(data []byte) ([]string, map[string]json.RawMessage, error) {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return nil, nil, err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, nil, fmt.Errorf("expected object, got %v", tok)
	}

	keys := make([]string, 0)
	values := make(map[string]json.RawMessage)
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, nil, err
		}
		key, ok := tok.(string)
		if !ok {
			return nil, nil, fmt.Errorf("unexpected key %v", tok)
		}

		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return nil, nil, err
		}
		if _, dup := values[key]; !dup {
			keys = append(keys, key)
		}
		values[key] = raw
	}

	if _, err := dec.Token(); err != nil {
		return nil, nil, err
	}

	return keys, values, nil
}

func isNull(raw json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}
