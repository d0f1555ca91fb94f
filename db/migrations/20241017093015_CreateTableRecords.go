package migrations

type CreateTableRecords struct{}

func init() {
	registerMigration(&CreateTableRecords{})
}

func (m *CreateTableRecords) Version() string {
	return "20241017093015"
}

func (m *CreateTableRecords) Up(tx *Tx) {
	tx.MustExec(`
		create table table_records (
			id bigint primary key,
			mydate date not null
		)
	`)
}

func (m *CreateTableRecords) Down(tx *Tx) {
	tx.MustExec(`drop table table_records`)
}
