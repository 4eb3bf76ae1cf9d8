package config

type StoreKeyStruct struct{}

func NewStoreKeyStruct() *StoreKeyStruct {
	return &StoreKeyStruct{}
}

// Data returns the key holding the persisted store aggregate.
func (r *StoreKeyStruct) Data() string {
	return "store:data"
}

// AdminAssociation returns the key marking that the store already has
// an associated admin.
func (r *StoreKeyStruct) AdminAssociation() string {
	return "store:admin"
}

var StoreKey = NewStoreKeyStruct()
