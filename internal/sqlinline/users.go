package sqlinline

const QInsertUser = `--sql 086dcf13-21a2-4ebe-8689-e910a11ded1d
INSERT INTO users (id, phone_number, name, country, password_hash, solde, is_active)
VALUES ($1, $2, $3, $4, $5, $6, $7)
RETURNING created_at, updated_at;
`

const QSelectUserByID = `--sql 983fca1c-e89b-4d1d-85e9-01a92fbd3fa9
SELECT id, phone_number, name, country, password_hash, solde, is_active, created_at, updated_at
FROM users
WHERE id = $1;
`

const QSelectUserByPhone = `--sql 406e3d66-03f9-45f2-9438-fddff80638da
SELECT id, phone_number, name, country, password_hash, solde, is_active, created_at, updated_at
FROM users
WHERE phone_number = $1;
`

// QLockUser takes the donor's row lock; settlements always lock the donor
// before the fund.
const QLockUser = `--sql 0ee07032-601f-4ea2-b3d9-a0e972a30647
SELECT id, phone_number, name, country, password_hash, solde, is_active, created_at, updated_at
FROM users
WHERE id = $1
FOR UPDATE;
`

const QDebitUser = `--sql 522ddbff-0251-45b3-a7a7-1d235db12c78
UPDATE users
SET solde = $1, updated_at = NOW()
WHERE id = $2;
`

const QCreditUserByID = `--sql 14cef4e3-ea25-4f55-addb-af0a631f26cd
UPDATE users
SET solde = solde + $1, updated_at = NOW()
WHERE id = $2
RETURNING id, phone_number, solde;
`

const QCreditUserByPhone = `--sql 22c7585d-f104-44a6-875b-9123825c13ad
UPDATE users
SET solde = solde + $1, updated_at = NOW()
WHERE phone_number = $2
RETURNING id, phone_number, solde;
`
