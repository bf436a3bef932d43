package training

// SeedCatalog returns the starter exercise library.
func SeedCatalog() []CatalogItem {
	return []CatalogItem{
		{ID: "ex-supino", Name: "Supino reto com halter", Muscle: "Peito"},
		{ID: "ex-crucifixo", Name: "Crucifixo com halter", Muscle: "Peito"},
		{ID: "ex-puxador", Name: "Puxada na frente", Muscle: "Costas"},
		{ID: "ex-serrote", Name: "Remada unilateral", Muscle: "Costas"},
		{ID: "ex-agachamento", Name: "Agachamento livre", Muscle: "Pernas"},
		{ID: "ex-legpress", Name: "Leg press", Muscle: "Pernas"},
		{ID: "ex-desenvolvimento", Name: "Desenvolvimento com halter", Muscle: "Ombros"},
		{ID: "ex-elevacao", Name: "Elevação lateral", Muscle: "Ombros"},
		{ID: "ex-rosca", Name: "Rosca direta", Muscle: "Bíceps"},
		{ID: "ex-triceps", Name: "Tríceps testa", Muscle: "Tríceps"},
	}
}

// SeedCardioCatalog returns the starter cardio kinds.
func SeedCardioCatalog() []CardioKind {
	return []CardioKind{
		{ID: "cardio-zumba", Kind: "Zumba"},
		{ID: "cardio-esteira", Kind: "Esteira"},
		{ID: "cardio-bike", Kind: "Bike"},
		{ID: "cardio-corda", Kind: "Corda"},
	}
}

func seedExercise(id, name string, sets int, reps string) Exercise {
	return Exercise{ID: id, Name: name, Sets: sets, Reps: reps, RestSec: 60}
}

// SeedTemplate returns the starter A..E weekly split.
func SeedTemplate() Template {
	return Template{
		SplitA: {
			Split: SplitA,
			AM:    []CardioBlock{{ID: "cardio-a-1", Kind: "Zumba", Minutes: 40}},
			PM: []Exercise{
				seedExercise("tr-ex-1", "Supino reto com halter", 4, "10-12"),
				seedExercise("tr-ex-2", "Crucifixo com halter", 3, "12"),
				seedExercise("tr-ex-3", "Desenvolvimento com halter", 3, "12"),
			},
		},
		SplitB: {
			Split: SplitB,
			AM:    []CardioBlock{{ID: "cardio-b-1", Kind: "Esteira", Minutes: 35}},
			PM: []Exercise{
				seedExercise("tr-ex-4", "Puxada na frente", 4, "10-12"),
				seedExercise("tr-ex-5", "Remada unilateral", 3, "12"),
				seedExercise("tr-ex-6", "Rosca direta", 3, "12"),
			},
		},
		SplitC: {
			Split: SplitC,
			AM:    []CardioBlock{{ID: "cardio-c-1", Kind: "Bike", Minutes: 40}},
			PM: []Exercise{
				seedExercise("tr-ex-7", "Agachamento livre", 4, "8-10"),
				seedExercise("tr-ex-8", "Leg press", 4, "12"),
				seedExercise("tr-ex-9", "Elevação lateral", 3, "12"),
			},
		},
		SplitD: {
			Split: SplitD,
			AM:    []CardioBlock{{ID: "cardio-d-1", Kind: "Esteira", Minutes: 30}},
			PM: []Exercise{
				seedExercise("tr-ex-10", "Supino reto com halter", 4, "8-10"),
				seedExercise("tr-ex-11", "Crucifixo com halter", 3, "12"),
				seedExercise("tr-ex-12", "Tríceps testa", 3, "12"),
			},
		},
		SplitE: {
			Split: SplitE,
			AM:    []CardioBlock{{ID: "cardio-e-1", Kind: "Corda", Minutes: 20}},
			PM: []Exercise{
				seedExercise("tr-ex-13", "Remada unilateral", 3, "12"),
				seedExercise("tr-ex-14", "Leg press", 4, "12"),
				seedExercise("tr-ex-15", "Elevação lateral", 3, "12"),
			},
		},
	}
}
