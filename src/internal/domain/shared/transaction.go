package shared

import "context"

// TransactionContext 事務上下文介面
//
// 行為約定：
// - tx != nil：在調用者的事務中執行
// - tx == nil：使用 auto-commit 模式（僅限讀操作）
//
// 寫操作（Save / Update / Delete）必須在事務中；讀操作可選擇是否參與事務。
//
// 這是一個標記介面，不暴露任何方法；GORM 實作在 infrastructure/persistence。
type TransactionContext interface {
	// 標記介面：僅用於傳遞上下文，不暴露方法
}

// TransactionManager 事務管理器介面
//
// ctx 承載請求的截止時間，事務內所有資料庫操作都受其約束：
//   txManager.InTransaction(ctx, func(tx TransactionContext) error {
//       account, _ := repo.FindByUserID(tx, userID)
//       entry, _ := account.Earn(amount, loyalty.TransactionTypePurchase, "Order #1042")
//       return repo.Update(tx, account)
//   })
type TransactionManager interface {
	InTransaction(ctx context.Context, fn func(tx TransactionContext) error) error
}
