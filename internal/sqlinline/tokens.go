package sqlinline

const QInsertRevokedToken = `--sql 22b4a95d-b527-412d-9518-5d79e40e74e9
INSERT INTO revoked_tokens (jti, expires_at)
VALUES ($1, $2)
ON CONFLICT (jti) DO NOTHING;
`

const QSelectTokenRevoked = `--sql 16446eb2-1a71-4f1c-9906-3ba404f5c880
SELECT EXISTS (SELECT 1 FROM revoked_tokens WHERE jti = $1);
`
