package partition

import "fmt"

// Migrate переводит документ старого формата в разделенный.
// Все данные старого документа становятся разделом activeUser: в старом формате
// не было владельца, поэтому данные забирает первый сохранивший пользователь.
// Разделенный документ возвращается без изменений.
func Migrate(doc *Document, activeUser string) (*Document, error) {
	if doc == nil {
		return NewDocument(), nil
	}
	if doc.Kind == KindPartitioned {
		return doc, nil
	}

	payload, err := doc.LegacyPayload()
	if err != nil {
		return nil, fmt.Errorf("migrate legacy document: %w", err)
	}

	migrated := NewDocument()
	migrated.Version = doc.Version
	if err := migrated.SetPartition(activeUser, payload); err != nil {
		return nil, fmt.Errorf("migrate legacy document: %w", err)
	}

	return migrated, nil
}
