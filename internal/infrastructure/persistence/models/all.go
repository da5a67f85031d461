package models

// All lists every model for schema migration.
func All() []interface{} {
	return []interface{}{
		&SeasonModel{},
		&TicketPriceModel{},
		&DinnerEventModel{},
		&CookingTeamModel{},
		&TeamAssignmentModel{},
		&HouseholdModel{},
		&InhabitantModel{},
		&AllergyTypeModel{},
		&AllergyModel{},
		&OrderModel{},
		&OrderHistoryModel{},
		&TransactionModel{},
		&BillingPeriodModel{},
		&InvoiceModel{},
	}
}
