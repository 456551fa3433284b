package valueobject

import (
	"fmt"
	"strings"
)

// AssetType представляет категорию оборудования (Value Object)
type AssetType string

const (
	SMT      AssetType = "SMT"
	Cooling  AssetType = "COOLING"
	Conveyor AssetType = "CONVEYOR"
)

// ParseAssetType разбирает категорию без учета регистра
func ParseAssetType(raw string) (AssetType, error) {
	at := AssetType(strings.ToUpper(strings.TrimSpace(raw)))
	if err := at.Validate(); err != nil {
		return "", err
	}
	return at, nil
}

// Validate проверяет, что категория объявлена
func (at AssetType) Validate() error {
	switch at {
	case SMT, Cooling, Conveyor:
		return nil
	default:
		return NewValidationError("asset_type", fmt.Sprintf("one of %v", AllAssetTypes()), string(at))
	}
}

// String возвращает строковое представление категории
func (at AssetType) String() string {
	return string(at)
}

// AllAssetTypes возвращает список всех допустимых категорий
func AllAssetTypes() []AssetType {
	return []AssetType{SMT, Cooling, Conveyor}
}
