package forms

// EditProgressForm carries both counters from the edit-progress modal
type EditProgressForm struct {
	Progress         *int `json:"progress" validate:"required"`
	AssemblyProgress *int `json:"assemblyProgress" validate:"required"`
}

// Validate checks that both counters are present and within 0..quantity
func (f EditProgressForm) Validate(quantity int) error {
	fields, err := missingFields(f)
	if err != nil {
		return err
	}
	if len(fields) > 0 {
		return &ValidationError{
			Code:    CodeMissingFields,
			Message: "Mohon isi progress produksi dan perakitan",
			Fields:  fields,
		}
	}

	var out []string
	if *f.Progress < 0 || *f.Progress > quantity {
		out = append(out, "progress")
	}
	if *f.AssemblyProgress < 0 || *f.AssemblyProgress > quantity {
		out = append(out, "assemblyProgress")
	}
	if len(out) > 0 {
		return &ValidationError{
			Code:    CodeInvalidProgress,
			Message: "Progress harus di antara 0 dan jumlah pesanan",
			Fields:  out,
		}
	}
	return nil
}
