package datastore

import (
	"context"
	"encoding/json"

	"github.com/uptrace/bun"

	"starbyte/internal/models"
)

func CreateTableStardustTransaction(ctx context.Context, db *bun.DB) error {
	_, err := db.NewCreateTable().Model((*models.StardustTransaction)(nil)).IfNotExists().
		ForeignKey(`(star_id) REFERENCES "star" (id) ON DELETE CASCADE`).
		ForeignKey(`(reward_id) REFERENCES "reward" (id) ON DELETE SET NULL`).
		Exec(ctx)
	if err != nil {
		return err
	}

	_, err = db.NewCreateIndex().Model((*models.StardustTransaction)(nil)).Index("index_stardust_transaction_star_id_created_at").IfNotExists().Column("star_id", "created_at").Exec(ctx)
	if err != nil {
		return err
	}

	_, err = db.NewCreateIndex().Model((*models.StardustTransaction)(nil)).Index("index_stardust_transaction_refund_of").IfNotExists().Unique().Column("refund_of").Exec(ctx)
	return err
}

// CreatePurchaseProcedures installs purchase_reward and refund_purchase. Both
// lock the rows they touch so concurrent purchases of the last unit, or by
// the same buyer, serialize inside postgres.
func CreatePurchaseProcedures(ctx context.Context, db *bun.DB) error {
	_, err := db.NewRaw(`
create or replace function purchase_reward(p_buyer_id uuid, p_reward_id uuid)
returns jsonb
language plpgsql
as $$
declare
	v_reward  "reward"%rowtype;
	v_balance bigint;
	v_item    jsonb;
	v_tx_id   uuid;
begin
	select * into v_reward from "reward" where id = p_reward_id for update;
	if not found then
		return jsonb_build_object('success', false, 'error', 'Reward not found');
	end if;
	if not v_reward.is_active then
		return jsonb_build_object('success', false, 'error', 'Reward is not active');
	end if;
	if v_reward.lister_id = p_buyer_id then
		return jsonb_build_object('success', false, 'error', 'You cannot purchase your own reward');
	end if;
	if v_reward.used_total >= v_reward.stock_total then
		return jsonb_build_object('success', false, 'error', 'Out of stock');
	end if;

	select stardust into v_balance from "star" where id = p_buyer_id for update;
	if not found then
		return jsonb_build_object('success', false, 'error', 'Star not found');
	end if;
	if v_balance < v_reward.price then
		return jsonb_build_object('success', false, 'error', 'Insufficient stardust');
	end if;

	if v_reward.usage_type = 'single_use' then
		v_item := v_reward.delivery_data -> v_reward.used_total;
	else
		v_item := v_reward.delivery_data -> 0;
	end if;
	if v_item is null then
		return jsonb_build_object('success', false, 'error', 'Out of stock');
	end if;

	update "star"
		set stardust = stardust - v_reward.price, updated_at = current_timestamp
		where id = p_buyer_id
		returning stardust into v_balance;
	update "reward"
		set used_total = used_total + 1, updated_at = current_timestamp
		where id = p_reward_id;
	insert into "stardust_transaction" (star_id, reward_id, amount, kind, status)
		values (p_buyer_id, p_reward_id, -v_reward.price, 'purchase', 'completed')
		returning id into v_tx_id;

	return jsonb_build_object(
		'success', true,
		'type', v_reward.delivery_type,
		'data', jsonb_build_object(v_reward.delivery_type, v_item),
		'receipt_id', v_tx_id,
		'balance', v_balance,
		'price', v_reward.price
	);
end;
$$;

drop function if exists refund_purchase(uuid);

create or replace function refund_purchase(p_receipt_id uuid, p_star_id uuid)
returns jsonb
language plpgsql
as $$
declare
	v_tx      "stardust_transaction"%rowtype;
	v_balance bigint;
begin
	select * into v_tx from "stardust_transaction"
		where id = p_receipt_id and kind = 'purchase' for update;
	if not found then
		return jsonb_build_object('success', false, 'error', 'Receipt not found');
	end if;
	if v_tx.star_id <> p_star_id then
		return jsonb_build_object('success', false, 'error', 'Receipt not found');
	end if;
	if v_tx.status = 'refunded' then
		return jsonb_build_object('success', false, 'error', 'Already refunded');
	end if;

	update "star"
		set stardust = stardust - v_tx.amount, updated_at = current_timestamp
		where id = v_tx.star_id
		returning stardust into v_balance;
	if v_tx.reward_id is not null then
		update "reward"
			set used_total = greatest(used_total - 1, 0), updated_at = current_timestamp
			where id = v_tx.reward_id;
	end if;
	update "stardust_transaction" set status = 'refunded' where id = v_tx.id;
	insert into "stardust_transaction" (star_id, reward_id, refund_of, amount, kind, status)
		values (v_tx.star_id, v_tx.reward_id, v_tx.id, -v_tx.amount, 'refund', 'completed');

	return jsonb_build_object('success', true, 'balance', v_balance);
end;
$$;`).Exec(ctx)
	return err
}

func PurchaseReward(ctx context.Context, db bun.IDB, buyerID, rewardID string) (*models.PurchaseResult, error) {
	var raw json.RawMessage
	err := db.NewRaw("SELECT purchase_reward(?::uuid, ?::uuid)", buyerID, rewardID).Scan(ctx, &raw)
	if err != nil {
		return nil, err
	}

	var result models.PurchaseResult
	if err := json.Unmarshal(raw, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func RefundPurchase(ctx context.Context, db bun.IDB, starID, receiptID string) (*models.RefundResult, error) {
	var raw json.RawMessage
	err := db.NewRaw("SELECT refund_purchase(?::uuid, ?::uuid)", receiptID, starID).Scan(ctx, &raw)
	if err != nil {
		return nil, err
	}

	var result models.RefundResult
	if err := json.Unmarshal(raw, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func GetTransactionsByStar(ctx context.Context, db bun.IDB, starID string, offset, limit int) ([]*models.StardustTransaction, error) {
	txs := make([]*models.StardustTransaction, 0, limit)
	err := db.NewSelect().
		Model(&txs).
		ColumnExpr("t.*").
		ColumnExpr("r.title AS reward_title").
		Join(`LEFT JOIN "reward" AS r ON r.id = t.reward_id`).
		Where("t.star_id = ?", starID).
		Order("t.created_at DESC").
		Offset(offset).
		Limit(limit).
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return txs, nil
}
