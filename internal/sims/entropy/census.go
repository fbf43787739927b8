package entropy

// Counts holds the number of cells of each material.
type Counts [NumMaterials]int

// Census counts the cells of each material. Unknown codes are not counted.
func Census(cells []Material) Counts {
	var c Counts
	for _, m := range cells {
		if m.Valid() {
			c[m]++
		}
	}
	return c
}

// Of returns the count for m.
func (c Counts) Of(m Material) int {
	if !m.Valid() {
		return 0
	}
	return c[m]
}

// Occupied returns the number of non-Empty cells.
func (c Counts) Occupied() int {
	total := 0
	for m := Data; int(m) < NumMaterials; m++ {
		total += c[m]
	}
	return total
}
