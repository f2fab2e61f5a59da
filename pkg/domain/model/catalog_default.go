package model

import "github.com/ccimar11/riskmap/pkg/domain/types"

// DefaultCatalog returns the criteria a fresh installation starts with.
// A new value is built on every call so callers may mutate it.
func DefaultCatalog() Catalog {
	return Catalog{
		types.CategoryMaterialidade: {
			{
				Name: "Vulto Financeiro",
				Options: []Option{
					{Description: "Até 10%", Score: 1},
					{Description: "De 10% a 20%", Score: 5},
					{Description: "Acima de 20%", Score: 10},
				},
			},
			{
				Name: "Quantidade de Contratos Vigentes",
				Options: []Option{
					{Description: "Até 5 contratos", Score: 1},
					{Description: "De 6 a 20 contratos", Score: 5},
					{Description: "Acima de 20 contratos", Score: 10},
				},
			},
			{
				Name: "Recursos Extraorçamentários",
				Options: []Option{
					{Description: "Não", Score: 0},
					{Description: "Sim", Score: 10},
				},
			},
		},
		types.CategoryRelevancia: {
			{
				Name: "Vinculação a Ação Estratégica Naval (AEN)",
				Options: []Option{
					{Description: "Vinculado a uma AEN", Score: 1},
					{Description: "Vinculado a duas AEN", Score: 3},
					{Description: "Vinculado a três AEN", Score: 7},
					{Description: "Vinculado a mais de três AEN", Score: 10},
				},
			},
			{
				Name: "Vinculação ao Portfólio Estratégico",
				Options: []Option{
					{Description: "Não", Score: 0},
					{Description: "Sim", Score: 10},
				},
			},
			{
				Name: "Vinculação à Ação Orçamentária da LOA",
				Options: []Option{
					{Description: "Não", Score: 0},
					{Description: "Sim", Score: 10},
				},
			},
		},
		types.CategoryCriticidade: {
			{
				Name: "Tempo sem Auditoria",
				Options: []Option{
					{Description: "Até 2 anos", Score: 1},
					{Description: "2 a 3 anos", Score: 4},
					{Description: "3 a 4 anos", Score: 7},
					{Description: "Acima de 4 anos", Score: 10},
				},
			},
			{
				Name: "Eventos Apuratórios Internos (TCE/IPM/Sindicância)",
				Options: []Option{
					{Description: "Sem registros nos últimos 5 anos", Score: 1},
					{Description: "Com registro de evento entre 2 a 5 anos", Score: 4},
					{Description: "Com registro de evento nos últimos 2 anos", Score: 7},
					{Description: "Com registro reincidente até 2 anos", Score: 10},
				},
			},
			{
				Name: "Repercussão Externa Negativa (Denúncias/Representações)",
				Options: []Option{
					{Description: "Sem registro", Score: 1},
					{Description: "Registro em até 1 ano", Score: 4},
					{Description: "Registro entre 1 a 2 anos", Score: 7},
					{Description: "Registro acima de 2 anos", Score: 10},
				},
			},
		},
	}
}
