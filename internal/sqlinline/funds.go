package sqlinline

const QInsertFund = `--sql f712cad2-8e08-4009-b76f-06a2545db6f1
INSERT INTO funds (id, name, owner_id, phone_beneficiary, target_amount, current_amount, total_participants, description, deadline, status)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
RETURNING created_at, updated_at;
`

const QSelectFundByID = `--sql b5f0e540-9dbe-415d-a860-1b35ef84fcfa
SELECT id, name, owner_id, phone_beneficiary, target_amount, current_amount, total_participants, description, deadline, status, created_at, updated_at
FROM funds
WHERE id = $1;
`

const QSelectFunds = `--sql da222ea3-931d-4459-ae91-71edb8bc7a30
SELECT id, name, owner_id, phone_beneficiary, target_amount, current_amount, total_participants, description, deadline, status, created_at, updated_at
FROM funds
ORDER BY created_at DESC;
`

const QSelectFundsByStatus = `--sql 47ea35c0-ee35-4757-bb5a-116b25cc3d76
SELECT id, name, owner_id, phone_beneficiary, target_amount, current_amount, total_participants, description, deadline, status, created_at, updated_at
FROM funds
WHERE status = $1
ORDER BY created_at DESC;
`

// QUpdateFundDetails writes the owner-editable fields only. Settlement fields
// (current_amount, total_participants, status) are written by QApplyFundSettlement
// and QCloseFund.
const QUpdateFundDetails = `--sql b635a615-ff1e-42fa-8952-3e9f60618b9c
UPDATE funds
SET name = $1,
    phone_beneficiary = $2,
    target_amount = $3,
    description = $4,
    deadline = $5,
    updated_at = NOW()
WHERE id = $6;
`

const QDeleteFund = `--sql 9fd08893-f09e-4feb-9144-7341e3793ac3
DELETE FROM funds
WHERE id = $1;
`

// QCloseFund only matches open funds, which makes the transition race-free.
const QCloseFund = `--sql c55910d5-84ec-48f2-8aa6-76c6cb042b3c
UPDATE funds
SET status = $1, updated_at = NOW()
WHERE id = $2 AND status = $3
RETURNING id, name, owner_id, phone_beneficiary, target_amount, current_amount, total_participants, description, deadline, status, created_at, updated_at;
`

const QLockFund = `--sql bbad1524-03ac-4e3e-a462-7a210422a81d
SELECT id, name, owner_id, phone_beneficiary, target_amount, current_amount, total_participants, description, deadline, status, created_at, updated_at
FROM funds
WHERE id = $1
FOR UPDATE;
`

const QApplyFundSettlement = `--sql 53580e8f-e250-4160-9ad6-28a00bd8d45a
UPDATE funds
SET current_amount = $1, total_participants = $2, status = $3, updated_at = NOW()
WHERE id = $4;
`
