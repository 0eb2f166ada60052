package sqlinline

const QInsertTransaction = `--sql 1a622053-ed34-44e9-b41d-f0e278b9366e
INSERT INTO transactions (id, user_id, fund_id, amount, tax, note, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7);
`

const QSelectTransactionsByUser = `--sql e410d981-d95a-46a7-b9e9-066cb3db892c
SELECT id, user_id, fund_id, amount, tax, note, created_at
FROM transactions
WHERE user_id = $1
ORDER BY created_at DESC;
`

const QSelectTransactionsByFund = `--sql 96b75f02-c7fd-499b-af7c-cee56b36d54c
SELECT id, user_id, fund_id, amount, tax, note, created_at
FROM transactions
WHERE fund_id = $1
ORDER BY created_at DESC;
`
