package model

// All returns every model managed by AutoMigrate.
func All() []interface{} {
	return []interface{}{
		&UserModel{},
		&BankInfoModel{},
		&CardModel{},
		&BillModel{},
		&CategoryModel{},
		&TransactionModel{},
	}
}
