package commerce

// Name returns the store name or a placeholder.
func (r Record) Name() string {
	if name, ok := r.String("name"); ok {
		return name
	}
	return "Unnamed Store"
}

// Address returns the store address, empty when absent.
func (r Record) Address() string {
	addr, _ := r.String("address")
	return addr
}
