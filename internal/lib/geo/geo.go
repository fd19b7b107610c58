// Package geo предоставляет статический справочник географической иерархии
// район -> упазила. Данные вшиты в бинарник и используются для валидации
// адресных полей запросов на донацию и для отдачи справочников клиентам.
package geo

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"
)

//go:embed districts.json
var districtsRaw []byte

//go:embed upazilas.json
var upazilasRaw []byte

// District элемент справочника районов.
type District struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Upazila элемент справочника упазил, привязан к району через DistrictID.
type Upazila struct {
	ID         string `json:"id"`
	DistrictID string `json:"district_id"`
	Name       string `json:"name"`
}

// Provider отдаёт справочные данные и проверяет корректность пар район/упазила.
type Provider struct {
	districts  []District
	upazilas   []Upazila
	byDistrict map[string][]Upazila // ключ — имя района в нижнем регистре
}

// New разбирает вшитые справочники и строит индекс упазил по районам.
func New() (*Provider, error) {
	const op = "geo.New"

	var districts []District
	if err := json.Unmarshal(districtsRaw, &districts); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	var upazilas []Upazila
	if err := json.Unmarshal(upazilasRaw, &upazilas); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	idToName := make(map[string]string, len(districts))
	for _, d := range districts {
		idToName[d.ID] = d.Name
	}

	byDistrict := make(map[string][]Upazila, len(districts))
	for _, u := range upazilas {
		name, ok := idToName[u.DistrictID]
		if !ok {
			return nil, fmt.Errorf("%s: upazila %s references unknown district %s", op, u.Name, u.DistrictID)
		}
		key := strings.ToLower(name)
		byDistrict[key] = append(byDistrict[key], u)
	}

	return &Provider{
		districts:  districts,
		upazilas:   upazilas,
		byDistrict: byDistrict,
	}, nil
}

// Districts возвращает полный список районов.
func (p *Provider) Districts() []District {
	return p.districts
}

// Upazilas возвращает упазилы указанного района. Пустое имя района
// означает полный список.
func (p *Provider) Upazilas(district string) []Upazila {
	if district == "" {
		return p.upazilas
	}
	return p.byDistrict[strings.ToLower(district)]
}

// ValidPair проверяет, что упазила принадлежит району. Сравнение
// регистронезависимое.
func (p *Provider) ValidPair(district, upazila string) bool {
	for _, u := range p.byDistrict[strings.ToLower(district)] {
		if strings.EqualFold(u.Name, upazila) {
			return true
		}
	}
	return false
}
